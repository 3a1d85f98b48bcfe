package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
)

// Node is one leaf of the JSON tree. Objects are not stored, they exist
// implicitly through the paths of their leaves.
type Node struct {
	Path      string `gorm:"primaryKey;size:768"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (Node) TableName() string {
	return "nodes"
}

type nodeStore struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

// NewNodeStore returns a realtimedb.Store backed by a SQL database. It is
// meant for local development and tests where no Firebase project is at hand.
func NewNodeStore(connect ConnectorFunc) (realtimedb.Store, error) {
	impl, log, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&Node{})
	if err != nil {
		return nil, err
	}

	return &nodeStore{
		db:  impl,
		log: log,
		now: time.Now,
	}, nil
}

func subtree(db *gorm.DB, path string) *gorm.DB {
	prefix := path + "/"
	return db.Where("path = ? OR substr(path, 1, ?) = ?", path, utf8.RuneCountInString(prefix), prefix)
}

func (s *nodeStore) Get(ctx context.Context, path string) (any, error) {
	path = strings.Trim(path, "/")

	var rows []Node
	err := subtree(s.db.WithContext(ctx), path).Order("path").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	tree := map[string]any{}

	for _, r := range rows {
		v, err := realtimedb.Decode([]byte(r.Value))
		if err != nil {
			return nil, fmt.Errorf("corrupt value at %s: %w", r.Path, err)
		}

		if r.Path == path {
			return v, nil
		}

		insert(tree, strings.Split(strings.TrimPrefix(r.Path, path+"/"), "/"), v)
	}

	return tree, nil
}

func insert(tree map[string]any, keys []string, v any) {
	for _, k := range keys[:len(keys)-1] {
		child, ok := tree[k].(map[string]any)
		if !ok {
			child = map[string]any{}
			tree[k] = child
		}
		tree = child
	}
	tree[keys[len(keys)-1]] = v
}

func (s *nodeStore) Shallow(ctx context.Context, path string) ([]string, error) {
	path = strings.Trim(path, "/")

	var paths []string
	err := subtree(s.db.WithContext(ctx).Model(&Node{}), path).Pluck("path", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	seen := map[string]struct{}{}
	for _, p := range paths {
		if p == path {
			return nil, nil
		}
		k, _, _ := strings.Cut(strings.TrimPrefix(p, path+"/"), "/")
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}

func (s *nodeStore) Set(ctx context.Context, path string, value any) error {
	path = strings.Trim(path, "/")

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.set(tx, path, value)
	})
}

func (s *nodeStore) Update(ctx context.Context, path string, fields map[string]any) error {
	path = strings.Trim(path, "/")

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range fields {
			if err := s.set(tx, path+"/"+strings.Trim(k, "/"), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *nodeStore) set(tx *gorm.DB, path string, value any) error {
	if path == "" {
		return fmt.Errorf("%w: refusing to replace the root", realtimedb.ErrInvalidKey)
	}

	normalized, err := normalize(value)
	if err != nil {
		return err
	}

	now := s.now()
	leaves := map[string]string{}
	if err := flatten(path, normalized, now, leaves); err != nil {
		return err
	}

	if err := subtree(tx, path).Delete(&Node{}).Error; err != nil {
		return err
	}

	// a scalar stored above path would shadow the new subtree
	ancestor := path
	for {
		i := strings.LastIndex(ancestor, "/")
		if i < 0 {
			break
		}
		ancestor = ancestor[:i]
		if err := tx.Where("path = ?", ancestor).Delete(&Node{}).Error; err != nil {
			return err
		}
	}

	if len(leaves) == 0 {
		return nil
	}

	rows := make([]Node, 0, len(leaves))
	for p, v := range leaves {
		rows = append(rows, Node{Path: p, Value: v, UpdatedAt: now})
	}

	s.log.Debug().Str("path", path).Int("leaves", len(rows)).Msg("storing subtree")

	return tx.Create(&rows).Error
}

func normalize(value any) (any, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value is not representable as json: %w", err)
	}
	return realtimedb.Decode(b)
}

func flatten(path string, v any, now time.Time, leaves map[string]string) error {
	switch value := v.(type) {
	case nil:
		return nil
	case map[string]any:
		if realtimedb.IsServerValue(value) {
			leaves[path] = strconv.FormatInt(now.UnixMilli(), 10)
			return nil
		}
		for k, child := range value {
			if _, err := realtimedb.Path(k); err != nil {
				return err
			}
			if err := flatten(path+"/"+k, child, now, leaves); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, child := range value {
			if err := flatten(path+"/"+strconv.Itoa(i), child, now, leaves); err != nil {
				return err
			}
		}
		return nil
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return err
		}
		leaves[path] = string(b)
		return nil
	}
}
