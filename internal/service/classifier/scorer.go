package classifier

import (
	"path/filepath"
	"strings"

	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/internal/utils/fuzzy"
)

// KeywordScore is the partial-match score of one keyword against the document.
type KeywordScore struct {
	Keyword string
	Score   float64
}

type classScoring struct {
	models.ClassScore
	Keywords []KeywordScore
}

// CombinedText lowercases the filename without its extension and the
// extracted text, joined by a single space.
func CombinedText(filename, text string) string {
	return strings.ToLower(stem(filename)) + " " + strings.ToLower(text)
}

// stem drops the extension of the last path element. Leading dots do not
// start an extension, so ".invoice" keeps its whole name.
func stem(filename string) string {
	ext := filepath.Ext(filename)
	rest := filename[:len(filename)-len(ext)]
	base := rest[strings.LastIndexAny(rest, `/\`)+1:]
	if strings.Trim(base, ".") == "" {
		return filename
	}
	return rest
}

// ScoreClasses returns one entry per class, in definition order. A class
// scores the best fuzzy.PartialRatio of any of its keywords.
func ScoreClasses(combined string, classes []models.ClassDefinition) models.ScoreBoard {
	return boardOf(scoreClasses(combined, classes))
}

func scoreClasses(combined string, classes []models.ClassDefinition) []classScoring {
	scorings := make([]classScoring, 0, len(classes))
	for _, class := range classes {
		s := classScoring{
			ClassScore: models.ClassScore{Class: class.Name},
			Keywords:   make([]KeywordScore, 0, len(class.Keywords)),
		}
		for _, kw := range class.Keywords {
			score := fuzzy.PartialRatio(kw, combined)
			s.Keywords = append(s.Keywords, KeywordScore{Keyword: kw, Score: score})
			if score > s.Score {
				s.Score = score
			}
		}
		scorings = append(scorings, s)
	}
	return scorings
}

func boardOf(scorings []classScoring) models.ScoreBoard {
	board := make(models.ScoreBoard, 0, len(scorings))
	for _, s := range scorings {
		board = append(board, s.ClassScore)
	}
	return board
}

// SelectClass returns the highest-scoring class when it reaches
// minConfidence, otherwise unknown_file with the best score seen. Ties go to
// the class defined first.
func SelectClass(board models.ScoreBoard, minConfidence float64) models.ClassScore {
	best, ok := board.Best()
	if !ok || best.Score < minConfidence {
		return models.ClassScore{Class: models.UnknownClass, Score: best.Score}
	}
	return best
}
