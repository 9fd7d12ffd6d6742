package log

// silentFormatter 표준 로거의 출력은 버려지므로 포맷팅 비용을 들이지 않기 위한 포맷터입니다.
// 실제 포맷팅은 hook에서 한 번만 수행합니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *Entry) ([]byte, error) {
	return nil, nil
}
