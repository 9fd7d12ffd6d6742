// Package testutil 여러 패키지의 테스트가 함께 쓰는 네트워크 도우미를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"
)

// FreePort 지금 비어 있는 로컬 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("빈 포트를 찾지 못했습니다: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForServer port에 TCP 연결이 될 때까지 timeout 동안 기다립니다.
func WaitForServer(port int, timeout time.Duration) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			return conn.Close()
		}
		time.Sleep(10 * time.Millisecond)
	}

	return fmt.Errorf("%s 포트의 서버가 %v 안에 시작되지 않았습니다", addr, timeout)
}

// NewHTTPClient 연결을 재사용하지 않는 테스트용 HTTP 클라이언트를 생성합니다.
// 테스트가 끝난 뒤 유휴 연결의 고루틴이 남지 않습니다.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
}
