package rival

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidCode      = errors.New("invalid code")
	ErrInvalidRank      = errors.New("invalid rank")
	ErrInvalidAttribute = errors.New("invalid attribute")
	ErrInvalidFilter    = errors.New("invalid filter")
	ErrNoFilters        = errors.New("no filters")
	ErrAlreadyExists    = errors.New("an entry already exists")
	ErrNotFound         = errors.New("entry must be created first")

	codeRegex = regexp.MustCompile(`^[0-9]{4}-[0-9]{4}$`)
	rankRegex = regexp.MustCompile(`^((10|[1-9])(DAN|KYU)|CHUU|KAI)$`)
)

const (
	AttributeName = "name"
	AttributeCode = "code"
	AttributeRank = "rank"
)

// Attributes are the only columns that can be searched for or updated.
var Attributes = []string{AttributeName, AttributeCode, AttributeRank}

// Game describes a rhythm game whose e-amusement rival codes are stored.
type Game struct {
	Command       string
	Title         string
	Table         string
	PlayerLabel   string
	CodeLabel     string
	MaxNameLength int
}

var (
	DDR = Game{
		Command:       "ddrrival",
		Title:         "DDR",
		Table:         "ddr_codes",
		PlayerLabel:   "Dancer name",
		CodeLabel:     "DDR ID",
		MaxNameLength: 8,
	}
	IIDX = Game{
		Command:       "iidxrival",
		Title:         "IIDX",
		Table:         "iidx_codes",
		PlayerLabel:   "DJ name",
		CodeLabel:     "IIDX ID",
		MaxNameLength: 6,
	}
)

type Rival struct {
	UserID string  `db:"user_id"`
	Name   string  `db:"name"`
	Code   string  `db:"code"`
	Rank   *string `db:"rank"`
}

func (r Rival) RankString() string {
	if r.Rank == nil {
		return ""
	}
	return *r.Rank
}

func (r Rival) String() string {
	return strings.Join([]string{r.UserID, r.Name, r.Code, r.RankString()}, "\t")
}

func (g Game) NormalizeName(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" || len(name) > g.MaxNameLength {
		return "", fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidName, g.PlayerLabel, g.MaxNameLength)
	}
	return name, nil
}

func (g Game) NormalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return "", fmt.Errorf("%w: %s must follow the following format: `####-####`", ErrInvalidCode, g.CodeLabel)
	}
	return code, nil
}

func NormalizeRank(rank string) (string, error) {
	rank = strings.ToUpper(strings.TrimSpace(rank))
	if !rankRegex.MatchString(rank) {
		return "", fmt.Errorf("%w: options are #dan, #kyu, chuu, or kai", ErrInvalidRank)
	}
	return rank, nil
}

// New validates and normalizes the user input for a new rival entry.
// The rank is optional and may be empty.
func (g Game) New(userID, name, code, rank string) (Rival, error) {
	n, err := g.NormalizeName(name)
	if err != nil {
		return Rival{}, err
	}
	c, err := g.NormalizeCode(code)
	if err != nil {
		return Rival{}, err
	}

	r := Rival{
		UserID: userID,
		Name:   n,
		Code:   c,
	}
	if rank != "" {
		rk, err := NormalizeRank(rank)
		if err != nil {
			return Rival{}, err
		}
		r.Rank = &rk
	}
	return r, nil
}

// ParseFilters parses key=value arguments. Every key must be one of Attributes.
func ParseFilters(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, ErrNoFilters
	}

	filters := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || strings.Contains(value, "=") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, arg)
		}
		if !slices.Contains(Attributes, key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAttribute, key)
		}
		filters[key] = value
	}
	return filters, nil
}

// NormalizeFields validates the values of an update in the same way New does.
func (g Game) NormalizeFields(fields map[string]string) (map[string]string, error) {
	result := make(map[string]string, len(fields))
	for key, value := range fields {
		var err error
		switch key {
		case AttributeName:
			value, err = g.NormalizeName(value)
		case AttributeCode:
			value, err = g.NormalizeCode(value)
		case AttributeRank:
			value, err = NormalizeRank(value)
		default:
			err = fmt.Errorf("%w: %q", ErrInvalidAttribute, key)
		}
		if err != nil {
			return nil, err
		}
		result[key] = value
	}
	return result, nil
}
