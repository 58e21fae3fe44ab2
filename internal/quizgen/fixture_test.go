package quizgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"newsquiz/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type blockFixture struct {
	heading  string
	question string
	options  [4]string
	title    string
	excerpt  string
}

func (b blockFixture) render() string {
	return fmt.Sprintf("%s\n\n%s\n\n① %s\n② %s\n③ %s\n④ %s\n\n📰 관련 기사: %s\n📝 \"%s\"\n\n",
		b.heading, b.question, b.options[0], b.options[1], b.options[2], b.options[3], b.title, b.excerpt)
}

func sampleArticles() []domain.Article {
	published := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return []domain.Article{
		{NewsID: "n1", Title: "한은 기준금리 전격 인상", URL: "https://www.sedaily.com/article/1", PublishedAt: published},
		{NewsID: "n2", Title: "반도체 수출 3개월 연속 증가", URL: "https://www.sedaily.com/article/2", PublishedAt: published},
		{NewsID: "n3", Title: "통신3사 요금 인하 경쟁 본격화", URL: "https://www.sedaily.com/article/3", PublishedAt: published},
		{NewsID: "n4", Title: "정유업계 감산 합의 무산", URL: "https://www.sedaily.com/article/4", PublishedAt: published},
		{NewsID: "n5", Title: "구리 가격 급등, 경기 회복 신호", URL: "https://www.sedaily.com/article/5", PublishedAt: published},
		{NewsID: "n6", Title: "장단기 금리차 역전 해소", URL: "https://www.sedaily.com/article/6", PublishedAt: published},
	}
}

func sampleBlocks() []blockFixture {
	opts := [4]string{"선택지 가", "선택지 나", "선택지 다", "선택지 라"}
	return []blockFixture{
		{heading: "🌊 블랙스완 #1", question: "금리가 예상보다 크게 오르면?", options: opts, title: "한은 기준금리 전격 인상", excerpt: "한국은행이 기준금리를 인상했다"},
		{heading: "🌊 블랙스완 #2", question: "수출 호조가 멈추는 계기는?", options: opts, title: "반도체 수출 3개월 연속 증가", excerpt: "반도체 수출이 늘었다"},
		{heading: "⚖️ 죄수의 딜레마 #1", question: "세 회사가 모두 요금을 내리면?", options: opts, title: "통신3사 요금 인하 경쟁 본격화", excerpt: "통신사들이 요금을 내렸다"},
		{heading: "⚖️ 죄수의 딜레마 #2", question: "감산 합의가 깨진 이유는?", options: opts, title: "정유업계 감산 합의 무산", excerpt: "감산 합의가 무산됐다"},
		{heading: "🔍 시그널 디코딩 #1", question: "구리 가격 상승이 뜻하는 것은?", options: opts, title: "구리 가격 급등, 경기 회복 신호", excerpt: "구리 가격이 올랐다"},
		{heading: "🔍 시그널 디코딩 #2", question: "금리차 역전 해소의 의미는?", options: opts, title: "장단기 금리차 역전 해소", excerpt: "금리차가 정상화됐다"},
	}
}

const sampleAnswers = `📋 정답 및 해설

**블랙스완: ②** 금리 급등은 채권 가격을 떨어뜨린다.
**블랙스완: ①** 수요 둔화가 가장 큰 위험이다.
**죄수의 딜레마: ③** 모두가 내리면 모두 손해를 본다.
**죄수의 딜레마: ④** 배신의 유인이 더 컸다.
**시그널 디코딩: ①** 구리는 경기 선행 지표다.
**시그널 디코딩: ②** 침체 우려가 줄었다는 신호다.

━━━━━━━━━━
💡 오늘의 한 줄 요약
`

func renderOutput(blocks []blockFixture, answers string) string {
	var b strings.Builder
	b.WriteString("오늘의 경제 퀴즈\n━━━━━━━━━━\n\n")
	for _, blk := range blocks {
		b.WriteString(blk.render())
	}
	b.WriteString("━━━━━━━━━━\n")
	b.WriteString(answers)
	return b.String()
}

// writePromptTree lays out a minimal prompts directory for both stages.
func writePromptTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, stage := range []string{"step1", "step2"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, stage, "files"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, stage, "prompt.txt"), []byte(stage+" prompt"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, stage, "instructions.txt"), []byte(stage+" instructions"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, stage, "memory.txt"), []byte(stage+" memory"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, stage, "files", "guide.txt"), []byte("guide"), 0o644))
	}
	return dir
}
