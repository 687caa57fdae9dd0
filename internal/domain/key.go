package domain

import "strings"

// BuildObjectKey maps an optional folder prefix and a file name to the object
// key inside the bucket. A non-empty folder contributes exactly one "/"
// between prefix and name regardless of how many trailing slashes the caller
// supplied. The file name is used verbatim, so equal keys overwrite each
// other at the storage layer.
func BuildObjectKey(folder, name string) string {
	if folder == "" {
		return name
	}
	return strings.TrimRight(folder, "/") + "/" + name
}
