package main

// DefaultQueryLimit is the default number of search results.
const DefaultQueryLimit = 10

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}
