// Package fields resolves values out of loosely structured decoded payloads.
//
// A Record wraps a generic object (as produced by encoding/json or the XML
// tree decoder in the schedule package) and looks fields up through ordered
// alias lists: the first alias carrying a usable value wins. Alias lists are
// plain data kept next to their consumers, so supporting a new source
// spelling means adding a string, not a branch.
package fields
