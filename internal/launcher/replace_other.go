//go:build !unix

package launcher

import "errors"

const canReplace = false

func replaceProcess(path string, argv, env []string) error {
	return errors.New("process replacement is not supported on this platform")
}
