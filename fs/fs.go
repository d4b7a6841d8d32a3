package appfs

import "embed"

// FS holds the assets shipped within the binaries.
//
// the glob pattern (instead of the bare directory) keeps the "_base" layouts embedded.
//
//go:embed templates/email/*
var FS embed.FS

// EmailTemplatesDir is the FS directory of the email templates.
const EmailTemplatesDir = "templates/email"
