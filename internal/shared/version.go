package shared

// Version is the CLI version reported by the version command and the
// RPC version method.
const Version = "0.1.0"
