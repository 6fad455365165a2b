package domain

// KeyPrefix namespaces every key written to the shared KV store.
const KeyPrefix = "homechef:"
