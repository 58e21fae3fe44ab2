package quizgen

import (
	"testing"

	"newsquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParser_Parse_WellFormed(t *testing.T) {
	p := NewParser(zap.NewNop())
	index := NewTitleIndex(sampleArticles())

	result := p.Parse(renderOutput(sampleBlocks(), sampleAnswers), index)

	for _, c := range domain.Categories {
		require.Len(t, result[c], 2, "category %s", c)
	}

	first := result[domain.CategoryBlackSwan][0]
	assert.Equal(t, "금리가 예상보다 크게 오르면?", first.Question)
	assert.Equal(t, []string{"선택지 가", "선택지 나", "선택지 다", "선택지 라"}, first.Options)
	assert.Equal(t, 1, first.CorrectAnswer)
	assert.Equal(t, "금리 급등은 채권 가격을 떨어뜨린다.", first.Explanation)
	assert.Equal(t, "https://www.sedaily.com/article/1", first.NewsLink)
	assert.Equal(t, "한은 기준금리 전격 인상", first.RelatedArticle.Title)
	assert.Equal(t, "한국은행이 기준금리를 인상했다", first.RelatedArticle.Excerpt)

	assert.Equal(t, 2, result[domain.CategoryPrisonersDilemma][0].CorrectAnswer)
	assert.Equal(t, 3, result[domain.CategoryPrisonersDilemma][1].CorrectAnswer)
	assert.Equal(t, 1, result[domain.CategorySignalDecoding][1].CorrectAnswer)
	assert.Equal(t, "침체 우려가 줄었다는 신호다.", result[domain.CategorySignalDecoding][1].Explanation)
}

func TestParser_Parse_MissingAnswerSection(t *testing.T) {
	p := NewParser(zap.NewNop())
	index := NewTitleIndex(sampleArticles())

	result := p.Parse(renderOutput(sampleBlocks(), ""), index)

	require.Len(t, result, len(domain.Categories))
	for _, c := range domain.Categories {
		assert.NotNil(t, result[c])
		assert.Empty(t, result[c], "category %s", c)
	}
}

func TestParser_Parse_DropsBlocksWithoutAnswers(t *testing.T) {
	p := NewParser(zap.NewNop())
	blocks := sampleBlocks()
	extra := blocks[0]
	extra.heading = "🌊 블랙스완 #3"
	extra.question = "세 번째 질문"
	blocks = append(blocks[:2], append([]blockFixture{extra}, blocks[2:]...)...)

	result := p.Parse(renderOutput(blocks, sampleAnswers), NewTitleIndex(sampleArticles()))

	require.Len(t, result[domain.CategoryBlackSwan], 2)
	assert.Equal(t, "수출 호조가 멈추는 계기는?", result[domain.CategoryBlackSwan][1].Question)
}

func TestParser_Parse_MarkerWithoutVariationSelector(t *testing.T) {
	p := NewParser(zap.NewNop())
	blocks := sampleBlocks()
	blocks[2].heading = "⚖ 죄수의 딜레마 #1"
	blocks[3].heading = "⚖ 죄수의 딜레마 #2"

	result := p.Parse(renderOutput(blocks, sampleAnswers), NewTitleIndex(sampleArticles()))

	assert.Len(t, result[domain.CategoryPrisonersDilemma], 2)
}

func TestParser_Parse_UnresolvedTitleKeepsCleanedTitle(t *testing.T) {
	p := NewParser(zap.NewNop())
	blocks := sampleBlocks()
	blocks[0].title = "전혀 다른   기사 제목 https://example.com/x"

	result := p.Parse(renderOutput(blocks, sampleAnswers), NewTitleIndex(sampleArticles()))

	q := result[domain.CategoryBlackSwan][0]
	assert.Empty(t, q.NewsLink)
	assert.Equal(t, "전혀 다른 기사 제목", q.RelatedArticle.Title)
}

func TestParser_Parse_CleansImagesAndURLs(t *testing.T) {
	p := NewParser(zap.NewNop())
	blocks := sampleBlocks()
	blocks[0].question = "![차트](http://img/x.png) 금리가 (사진=연합뉴스) 오르면?"
	blocks[0].excerpt = "한국은행이 [이미지: 본관] 금리를 올렸다 https://t.co/abc"

	result := p.Parse(renderOutput(blocks, sampleAnswers), NewTitleIndex(sampleArticles()))

	q := result[domain.CategoryBlackSwan][0]
	assert.Equal(t, "금리가 오르면?", q.Question)
	assert.Equal(t, "한국은행이 금리를 올렸다", q.RelatedArticle.Excerpt)
}

func TestParser_Parse_Idempotent(t *testing.T) {
	p := NewParser(zap.NewNop())
	index := NewTitleIndex(sampleArticles())
	text := renderOutput(sampleBlocks(), sampleAnswers)

	assert.Equal(t, p.Parse(text, index), p.Parse(text, index))
}

func TestParser_Parse_NilIndex(t *testing.T) {
	p := NewParser(zap.NewNop())

	result := p.Parse(renderOutput(sampleBlocks(), sampleAnswers), nil)

	require.Len(t, result[domain.CategoryBlackSwan], 2)
	assert.Empty(t, result[domain.CategoryBlackSwan][0].NewsLink)
}

func TestParser_Parse_EmptyText(t *testing.T) {
	result := NewParser(nil).Parse("", NewTitleIndex(nil))

	assert.Equal(t, 0, result.Total())
	assert.Len(t, result, len(domain.Categories))
}
