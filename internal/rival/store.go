package rival

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const DriverName = "sqlite"

func init() {
	// modernc.org/sqlite registers itself as "sqlite" which sqlx does not know
	sqlx.BindDriver(DriverName, sqlx.QUESTION)
}

type Store struct {
	db   *sqlx.DB
	game Game
}

func NewStore(db *sqlx.DB, game Game) *Store {
	return &Store{
		db:   db,
		game: game,
	}
}

func (s *Store) Game() Game {
	return s.game
}

func (s *Store) Get(ctx context.Context, userID string) (Rival, error) {
	return get(ctx, s.db, s.game.Table, userID)
}

func get(ctx context.Context, q sqlx.QueryerContext, table, userID string) (Rival, error) {
	var r Rival
	query := fmt.Sprintf(`SELECT user_id, name, code, rank FROM %s WHERE user_id = ?`, table)
	err := sqlx.GetContext(ctx, q, &r, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Rival{}, fmt.Errorf("%w: user %s has no %s entry", ErrNotFound, userID, table)
		}
		return Rival{}, fmt.Errorf("failed to get %s entry of user %s: %w", table, userID, err)
	}
	return r, nil
}

func (s *Store) Create(ctx context.Context, r Rival) error {
	return s.tx(ctx, func(tx *sqlx.Tx) error {
		_, err := get(ctx, tx, s.game.Table, r.UserID)
		if err == nil {
			return fmt.Errorf("%w for %s", ErrAlreadyExists, r.UserID)
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		query := fmt.Sprintf(`INSERT INTO %s (user_id, name, code, rank) VALUES (:user_id, :name, :code, :rank)`, s.game.Table)
		_, err = tx.NamedExecContext(ctx, query, r)
		if err != nil {
			return fmt.Errorf("failed to create %s entry for %s: %w", s.game.Table, r.Name, err)
		}
		return nil
	})
}

// Search returns all entries that match every filter.
// Name and rank filters are compared case insensitively.
func (s *Store) Search(ctx context.Context, filters map[string]string) ([]Rival, error) {
	if len(filters) == 0 {
		return nil, ErrNoFilters
	}

	var (
		keys       = slices.Sorted(maps.Keys(filters))
		conditions = make([]string, 0, len(keys))
		args       = make([]any, 0, len(keys))
	)
	for _, key := range keys {
		if !slices.Contains(Attributes, key) {
			return nil, fmt.Errorf("%w: %q is not a valid attribute to search for", ErrInvalidAttribute, key)
		}
		value := filters[key]
		if key != AttributeCode {
			value = strings.ToUpper(value)
		}
		conditions = append(conditions, key+" = ?")
		args = append(args, value)
	}

	query := fmt.Sprintf(`SELECT user_id, name, code, rank FROM %s WHERE %s ORDER BY name, user_id`,
		s.game.Table,
		strings.Join(conditions, " AND "),
	)

	result := []Rival{}
	err := s.db.SelectContext(ctx, &result, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", s.game.Table, err)
	}
	return result, nil
}

// Update changes the given attributes of an existing entry.
// Nothing to update is not an error.
func (s *Store) Update(ctx context.Context, userID string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	fields, err := s.game.NormalizeFields(fields)
	if err != nil {
		return err
	}

	var (
		keys = slices.Sorted(maps.Keys(fields))
		set  = make([]string, 0, len(keys))
		args = make([]any, 0, len(keys)+1)
	)
	for _, key := range keys {
		set = append(set, key+" = ?")
		args = append(args, fields[key])
	}
	args = append(args, userID)

	return s.tx(ctx, func(tx *sqlx.Tx) error {
		_, err := get(ctx, tx, s.game.Table, userID)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`UPDATE %s SET %s WHERE user_id = ?`, s.game.Table, strings.Join(set, ", "))
		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update %s entry of user %s: %w", s.game.Table, userID, err)
		}
		return nil
	})
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = ?`, s.game.Table)
	res, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete %s entry of user %s: %w", s.game.Table, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: user %s has no %s entry", ErrNotFound, userID, s.game.Table)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.game.Table))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s entries: %w", s.game.Table, err)
	}
	return n, nil
}

func (s *Store) tx(ctx context.Context, f func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	err = f(tx)
	if err != nil {
		return err
	}
	return tx.Commit()
}
