package editor

import (
	"strings"

	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
)

// administrativeDirName is the reserved entry name no incoming path
// component may use (spec §4.6, "names equal to the administrative
// directory are rejected").
const administrativeDirName = ".svnwc"

// safeJoin joins name onto parent's working-copy-relative path, failing
// with ObstructedUpdate if the result would escape the anchor or collide
// with the administrative directory (spec §4.6).
func safeJoin(op string, parent scpath.RelativePath, name string) (scpath.RelativePath, error) {
	if name == "" || name == "." || name == ".." {
		return "", ObstructedUpdate(op, parent.Join(name).String(), "invalid path component", nil)
	}
	if name == administrativeDirName {
		return "", ObstructedUpdate(op, parent.Join(name).String(),
			"path component collides with the administrative directory", nil)
	}
	if strings.ContainsAny(name, "\\") {
		return "", ObstructedUpdate(op, parent.Join(name).String(), "invalid path separator in component", nil)
	}

	joined := parent.Join(name)
	if !scpath.IsPathSafe(joined.String()) {
		return "", ObstructedUpdate(op, joined.String(), "path escapes the working copy anchor", nil)
	}
	return joined.Normalize(), nil
}
