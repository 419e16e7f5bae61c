package seq2seq

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/oukeidos/glosst/internal/logger"
)

type request struct {
	Text    string `json:"text"`
	SrcLang string `json:"src_lang"`
	TgtLang string `json:"tgt_lang"`
}

type response struct {
	TranslationText string `json:"translation_text"`
	Error           string `json:"error,omitempty"`
}

// ProcessModel talks to a long-lived model server over stdin/stdout, one JSON
// object per line. The model is loaded once when the process starts; calls
// are serialized.
type ProcessModel struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	closed bool
}

// maxLine bounds a single response line.
const maxLine = 16 * 1024 * 1024

// StartProcess launches argv[0] with the remaining arguments. The child's
// stderr is passed through so model loading progress stays visible.
func StartProcess(argv []string, env []string) (*ProcessModel, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("local model command is empty")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("local model stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("local model stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start local model: %w", err)
	}
	logger.Info("Started local model", "command", argv[0], "pid", cmd.Process.Pid)
	return &ProcessModel{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReaderSize(stdout, 64*1024),
	}, nil
}

// Generate sends one request and waits for its reply. If ctx ends first the
// process is killed, since its stream can no longer be trusted.
func (m *ProcessModel) Generate(ctx context.Context, text, srcLang, tgtLang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", errors.New("local model is closed")
	}

	payload, err := json.Marshal(request{Text: text, SrcLang: srcLang, TgtLang: tgtLang})
	if err != nil {
		return "", err
	}
	payload = append(payload, '\n')
	if _, err := m.stdin.Write(payload); err != nil {
		return "", fmt.Errorf("write to local model: %w", err)
	}

	type result struct {
		line []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := readLine(m.stdout)
		done <- result{line, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		m.kill()
		<-done
		return "", ctx.Err()
	}
	if res.err != nil {
		return "", fmt.Errorf("read from local model: %w", res.err)
	}

	var resp response
	if err := json.Unmarshal(res.line, &resp); err != nil {
		return "", fmt.Errorf("decode local model reply: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("local model: %s", resp.Error)
	}
	return resp.TranslationText, nil
}

func readLine(r *bufio.Reader) ([]byte, error) {
	var line []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		line = append(line, chunk...)
		if len(line) > maxLine {
			return nil, fmt.Errorf("reply exceeds %d bytes", maxLine)
		}
		if !isPrefix {
			return line, nil
		}
	}
}

func (m *ProcessModel) kill() {
	m.closed = true
	if m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
	_ = m.stdin.Close()
}

// Close ends the model process by closing its stdin and waits for it to exit.
func (m *ProcessModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		_ = m.cmd.Wait()
		return nil
	}
	m.closed = true
	if err := m.stdin.Close(); err != nil {
		logger.Warn("Failed to close local model stdin", "error", err)
	}
	if err := m.cmd.Wait(); err != nil {
		return fmt.Errorf("local model exited: %w", err)
	}
	return nil
}
