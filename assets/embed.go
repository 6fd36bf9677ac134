// Package assets embeds the default word lists, the hint table and the
// sqlite migrations so the server runs without any external files.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed words3.txt words4.txt words5.txt hints.json sql/*.sql
var FS embed.FS

// Migrations returns the embedded sql directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Read returns the contents of an embedded file.
func Read(name string) ([]byte, error) {
	return FS.ReadFile(name)
}
