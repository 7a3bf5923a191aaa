// Package command expands proxy-command templates and replaces the
// current process with the selected tunnel program.
package command

import (
	"strconv"
	"strings"

	"github.com/book/ssh-gadgets/config"
)

// Expand substitutes %h and %p in template with the target's host and
// port.  Everything else passes through unchanged, including other
// %-markers from the richer ssh_config token set, which stay literal.
// The scan is a single pass: substituted values are never rescanned,
// so a host that itself contains "%p" stays as written.
func Expand(template string, target config.Endpoint) string {
	port := strconv.Itoa(target.Port)

	var b strings.Builder
	b.Grow(len(template) + len(target.Host))
	for i := 0; i < len(template); i++ {
		if template[i] != '%' || i+1 == len(template) {
			b.WriteByte(template[i])
			continue
		}
		switch template[i+1] {
		case 'h':
			b.WriteString(target.Host)
			i++
		case 'p':
			b.WriteString(port)
			i++
		default:
			b.WriteByte('%')
		}
	}
	return b.String()
}
