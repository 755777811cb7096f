// Package cleanup implements the merged-branch cleanup workflow. A run
// snapshots repository references once, determines which local branches are
// merged into permanent or other branches, and interactively deletes the
// merged ones. The snapshot is never refreshed mid-run, so merges that happen
// while a run is in progress are only observed on the next invocation.
package cleanup
