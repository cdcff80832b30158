//go:build unix

package launcher

import "golang.org/x/sys/unix"

const canReplace = true

func replaceProcess(path string, argv, env []string) error {
	return unix.Exec(path, argv, env)
}
