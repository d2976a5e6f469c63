// Package feed loads spectrum datasets from the community HTTP API or a local
// JSON document and keeps them fresh with a Poller or a file Watcher
package feed
