/*
Package status holds the data that flows out of the rename pipeline.

	+-----------+      +-----------+      +-----------+
	|   Plan    | ---> |  Outcome  | ---> |  Report   |
	| (orig,new)|      | (status)  |      | (per run) |
	+-----------+      +-----------+      +-----------+

🎯 Purpose:
- Plan: one immutable (original, proposed) pair
- Outcome: renamed, dry-run, collision or failed
- Warning: an entry dropped while listing the folder
- FileManager: the two filesystem calls the pipeline makes

Nothing in this package is persisted; a Report lives for one run.
*/
package status
