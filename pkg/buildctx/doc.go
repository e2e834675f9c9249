// Package buildctx describes the build a run belongs to: the project model,
// whether this is a snapshot or a release build, the build properties passed
// on the command line and the environment. It also collects the name/value
// pairs a run exports, in the order they were exported.
package buildctx
