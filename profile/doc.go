// Package profile provides optional runtime profiling for namedlogs.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// stopper, so callers need no conditional code.
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// The namedlogs command exposes the same settings as --pprof-mode and
// --pprof-dir; the default directory is the "pprof" subdirectory of the
// user cache directory. Analyze the output with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// With the tag, [net/http/pprof] handlers are also registered on
// [net/http.DefaultServeMux].
package profile
