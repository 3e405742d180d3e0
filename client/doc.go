// Package client is the board's client-side core: a durable session token
// slot, a session guard answering "am I logged in?" without a server round
// trip, and a board synchronizer that keeps a local ticket cache consistent
// with the server across fetch, create, delete, filter, and sort.
//
// The guard decodes tokens without the signing secret, so its checks only
// prove a token is well-formed and unexpired. They are a local optimization;
// the server re-verifies the signature on every protected request.
package client
