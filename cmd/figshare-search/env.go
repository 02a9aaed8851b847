package main

import "strings"

// envKeyReplacer maps nested keys to env names: search.endpoint becomes
// FIGSHARE_SEARCH_SEARCH_ENDPOINT.
var envKeyReplacer = strings.NewReplacer(".", "_")
