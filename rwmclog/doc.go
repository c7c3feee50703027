// Package rwmclog is a thin wrapper around zerolog providing the
// structured-event logger used by package reactive for update, lift and
// drop events. It exists so reactive's default construction path and its
// tests do not each hand-roll a zerolog.Logger.
package rwmclog
