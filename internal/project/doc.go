// Package project handles recognition and configuration of an Azure
// Functions project directory.
//
// Two files are inspected, both optional except where noted:
//
//   - host.json — required for deploy/pack (unless --no-verify): its
//     presence and a supported "version" value identify the directory as
//     a Functions project. host.json is commonly commented, so it is
//     parsed as JSONC via github.com/tidwall/jsonc.
//   - .funcship.yaml — optional defaults for the resource group, app
//     name, archive path, and ignore file. Command-line arguments and
//     flags always take precedence over config values.
package project
