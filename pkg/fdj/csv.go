package fdj

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ArowuTest/lottery-insights/internal/models"
)

var (
	dateKeys       = []string{"date_de_tirage", "date", "drawdate"}
	drawNumberKeys = []string{"numero_de_tirage", "num_tirage", "drawnumber"}
	dateLayouts    = []string{"02/01/2006", "2/1/2006", "02/01/06", "20060102", "2006-01-02"}
)

const (
	mainPrefix   = "boule_"
	starPrefix   = "etoile_"
	chanceColumn = "numero_chance"
)

// ErrMalformedCSV is returned when the export cannot be read as a draw history at all
var ErrMalformedCSV = errors.New("malformed draw history csv")

// ParseResult holds the draws read from an export and the number of rejected rows
type ParseResult struct {
	Draws   []*models.Draw
	Rows    int
	Skipped int
}

// ParseDraws reads an FDJ CSV export of game. Rows that do not describe a valid
// draw are skipped and counted; only unreadable input fails.
func ParseDraws(game models.Game, r io.Reader) (*ParseResult, error) {
	if !game.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownGame, game)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sniffDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformedCSV, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	rules := game.Rules()
	result := &ParseResult{Draws: []*models.Draw{}}
	seen := make(map[models.DrawKey]struct{})

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, result.Rows+2, err)
		}
		result.Rows++

		row := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" || i >= len(record) {
				continue
			}
			row[key] = strings.TrimSpace(record[i])
		}

		draw, ok := parseRow(game, rules, row)
		if !ok {
			result.Skipped++
			continue
		}
		if _, dup := seen[draw.Key()]; dup {
			result.Skipped++
			continue
		}
		seen[draw.Key()] = struct{}{}
		result.Draws = append(result.Draws, draw)
	}

	models.SortDraws(result.Draws)
	return result, nil
}

func checkHeader(header []string) error {
	var hasDate, hasMain bool
	for _, key := range header {
		if strings.HasPrefix(key, mainPrefix) {
			hasMain = true
		}
		for _, dk := range dateKeys {
			if key == dk {
				hasDate = true
			}
		}
	}
	if !hasDate {
		return fmt.Errorf("%w: no date column", ErrMalformedCSV)
	}
	if !hasMain {
		return fmt.Errorf("%w: no %s* columns", ErrMalformedCSV, mainPrefix)
	}
	return nil
}

func parseRow(game models.Game, rules models.GameRules, row map[string]string) (*models.Draw, bool) {
	date, ok := parseDate(row)
	if !ok {
		return nil, false
	}
	drawNumber, ok := parseDrawNumber(row)
	if !ok {
		return nil, false
	}

	main, ok := extractNumbers(row, mainPrefix, rules.MainCount)
	if !ok {
		return nil, false
	}

	var bonus []int
	switch game {
	case models.GameLoto:
		chance, err := strconv.Atoi(row[chanceColumn])
		if err != nil {
			return nil, false
		}
		bonus = []int{chance}
	case models.GameEuroMillions:
		bonus, ok = extractNumbers(row, starPrefix, rules.BonusCount)
		if !ok {
			return nil, false
		}
	}

	draw := &models.Draw{
		Game:         game,
		Date:         date,
		DrawNumber:   drawNumber,
		MainNumbers:  main,
		BonusNumbers: bonus,
	}
	draw.Normalize()
	if err := draw.Validate(); err != nil {
		return nil, false
	}
	return draw, true
}

// extractNumbers collects prefix_N columns ordered by N. Columns with a
// non-numeric suffix (e.g. boule_1_second_tirage) are ignored.
func extractNumbers(row map[string]string, prefix string, want int) ([]int, bool) {
	type indexed struct{ pos, value int }
	var found []indexed
	for key, value := range row {
		if !strings.HasPrefix(key, prefix) || value == "" {
			continue
		}
		pos, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, false
		}
		found = append(found, indexed{pos, n})
	}
	if len(found) != want {
		return nil, false
	}
	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	numbers := make([]int, len(found))
	for i, f := range found {
		numbers[i] = f.value
	}
	return numbers, true
}

func parseDate(row map[string]string) (time.Time, bool) {
	for _, key := range dateKeys {
		value := row[key]
		if value == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

func parseDrawNumber(row map[string]string) (int, bool) {
	for _, key := range drawNumberKeys {
		value, present := row[key]
		if !present {
			continue
		}
		if value == "" {
			return 0, true
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, true
}

// sniffDelimiter picks the most frequent of ';', ',' and tab on the header line
func sniffDelimiter(content []byte) rune {
	line := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	best, bestCount := ';', 0
	for _, d := range []rune{';', ',', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
