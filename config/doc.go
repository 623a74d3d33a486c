// Package config loads wrap.yml, the settings file for golden-output checks.
//
// Example wrap.yml:
//
//	compare:
//	  reporter: inline     # diff | inline | none
//	  diff_command: diff
//	  skip_header: true
//	log:
//	  level: debug
package config
