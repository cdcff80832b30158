// Command fakeclient stands in for a database shell. It reports what it was
// started with and exits with the status given by an --exit=N argument.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

func main() {
	fmt.Printf("client-tty=%v\n", term.IsTerminal(int(os.Stdin.Fd())))
	fmt.Printf("client-args=%s\n", strings.Join(os.Args[1:], " "))
	fmt.Printf("client-pw=%s\n", os.Getenv("PGPASSWORD"))

	for _, arg := range os.Args[1:] {
		if v, ok := strings.CutPrefix(arg, "--exit="); ok {
			code, err := strconv.Atoi(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bad exit code %q\n", v)
				os.Exit(2)
			}
			os.Exit(code)
		}
	}
}
