package cache

import "strings"

const (
	GlobalKeyPrefix = "newsquiz"

	quizService = "quiz"
	datesSuffix = "dates"
)

// GenerateCacheKey generates a key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizKey is the key of the stored quiz for a game type and date.
func QuizKey(gameType, date string) string {
	return GenerateCacheKey(quizService, gameType, date)
}

// QuizDatesKey is the sorted set listing the stored dates of a game type.
func QuizDatesKey(gameType string) string {
	return GenerateCacheKey(quizService, gameType, datesSuffix)
}
