// Package config loads isnad configuration.
//
// Settings are layered: built-in defaults, then a TOML file, then a .env
// file in the working directory, then ISNAD_* environment variables.
//
//	[store]
//	kind = "csv"                       # memory|csv|http|sqlite|postgres|mongo
//	narrators = "data/all_rawis.csv"   # path, or URL when kind = "http"
//	hadiths = "data/hadiths.csv"
//
//	[cache]
//	kind = "file"                      # file|redis|none
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
//	[render]
//	locale = "ar"
//
// The file lives at $XDG_CONFIG_HOME/isnad/config.toml unless a path is
// given explicitly.
package config
