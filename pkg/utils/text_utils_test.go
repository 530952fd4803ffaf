package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestFace(t *testing.T, size float64) *text.GoTextFace {
	t.Helper()
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: source, Size: size}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font := newTestFace(t, 14)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int
	}{
		{"短文本不换行", "Depth 5.0m", 1000, 1},
		{"长文本自动换行", "WASD move  T surface  C cancel  F refill  L drain  Z reset zones  P pause  R restart", 200, 3},
		{"显式换行", "line one\nline two", 1000, 2},
		{"空文本", "", 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if len(lines) < tt.expectMin {
				t.Errorf("期望至少 %d 行，实际得到 %d 行: %q", tt.expectMin, len(lines), lines)
			}
			for _, line := range lines {
				if strings.Contains(line, " ") && measureTextWidth(line, font) > tt.maxWidth {
					t.Errorf("行 %q 超过最大宽度 %.0f", line, tt.maxWidth)
				}
			}
		})
	}
}

// TestWrapTextKeepsWords 按空格断行不拆开单词
func TestWrapTextKeepsWords(t *testing.T) {
	font := newTestFace(t, 14)
	input := "oxygen refill zone depleted"

	lines := WrapText(input, font, measureTextWidth("oxygen refill", font)+1)
	if got := strings.Join(lines, " "); got != input {
		t.Errorf("重新拼接后应与原文一致: %q", got)
	}
	if lines[0] != "oxygen refill" {
		t.Errorf("第一行应为 %q，实际 %q", "oxygen refill", lines[0])
	}
}

// TestWrapTextLongWord 超长单词强制断行
func TestWrapTextLongWord(t *testing.T) {
	font := newTestFace(t, 14)
	word := "supercalifragilisticexpialidocious"

	lines := WrapText(word, font, measureTextWidth("supercali", font))
	if len(lines) < 2 {
		t.Fatalf("超长单词应被断开，实际 %q", lines)
	}
	if strings.Join(lines, "") != word {
		t.Errorf("断开后拼接应还原单词: %q", lines)
	}
}

// TestWrapTextNilFont 没有字体时原样返回
func TestWrapTextNilFont(t *testing.T) {
	lines := WrapText("anything", nil, 10)
	if len(lines) != 1 || lines[0] != "anything" {
		t.Errorf("nil 字体应原样返回，实际 %q", lines)
	}
}
