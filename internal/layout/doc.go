// Package layout persists user-saved floor-plan positions.
//
// Discovery assigns every device a default position; when the user
// drags an icon and saves, the new position lands here keyed by
// (device_id, switch_number) and overrides the default on the next
// startup. Saved positions for channels that have since disappeared
// from the account are ignored, not deleted.
package layout
