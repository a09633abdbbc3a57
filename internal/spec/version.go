package spec

// Version is the discovery output format version. It tracks the JSON
// structure of a Result, not the CLI release, and changes only when the
// output schema changes incompatibly.
const Version = "0.1"
