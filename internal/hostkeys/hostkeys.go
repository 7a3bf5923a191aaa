// Package hostkeys extracts reference key material from OpenSSH
// known_hosts files, so a scanned host key can be compared against
// what the user already trusts.
package hostkeys

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/book/ssh-gadgets/config"
)

// Lookup returns the base64 key material of the first known_hosts
// entry matching the endpoint, or "" when the file holds none.  Hashed
// entries, wildcard patterns, and marked (@revoked, @cert-authority)
// entries are not searchable and are skipped.
func Lookup(path string, target config.Endpoint) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("known_hosts: %w", err)
	}
	defer f.Close()

	addr := knownhosts.Normalize(target.Addr())

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		marker, hosts, key, _, _, err := ssh.ParseKnownHosts(line)
		if err != nil {
			// Unparsable lines are skipped, as ssh itself does.
			continue
		}
		if marker != "" {
			continue
		}
		for _, h := range hosts {
			if strings.HasPrefix(h, "|") || strings.ContainsAny(h, "*?") {
				continue
			}
			if knownhosts.Normalize(h) == addr {
				return base64.StdEncoding.EncodeToString(key.Marshal()), nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("known_hosts: %w", err)
	}
	return "", nil
}
