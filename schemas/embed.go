// Package schemas embeds the JSON Schemas for dataset files and match-run artifacts.
package schemas

import _ "embed"

// Dataset is dataset.schema.json, the shape of files loaded with match --dataset.
//
//go:embed dataset.schema.json
var Dataset []byte

// MatchRun is match_run.schema.json, the shape of the artifact written by match.
//
//go:embed match_run.schema.json
var MatchRun []byte
