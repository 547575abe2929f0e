package socialmanager

import "embed"

// ClientScript is the file name of the script that renders deferred share
// buttons in the browser. It is served under /public/.
const ClientScript = "social-manager.js"

// EmbeddedAssets contains static assets shipped with the framework.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
