package persistence

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketRuns = "runs"
)

var ErrNonFiniteTrace = errors.New("trace contains non-finite values and cannot be stored")

// Run is a single stored simulation
type Run struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Config    pid.Configuration `json:"config"`
	Trace     pid.Trace         `json:"trace"`
}

// NewRun wraps the given simulation into a Run with a fresh id
func NewRun(config pid.Configuration, trace pid.Trace) Run {
	now := time.Now().UTC()
	return Run{
		ID:        newRunId(now),
		CreatedAt: now,
		Config:    config,
		Trace:     trace,
	}
}

// newRunId combines the creation time with a random suffix,
// runs created within the same clock tick still get distinct ids.
func newRunId(createdAt time.Time) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		ui.Fatal("Unable to generate run id: %v", err)
	}
	return strconv.FormatInt(createdAt.UnixNano(), 36) + "-" + hex.EncodeToString(suffix)
}

type Persistence interface {
	Init() error

	SaveRun(run Run) error
	LoadRun(id string) (Run, error)
	DeleteRun(id string) error
	// ListRuns returns all stored runs, oldest first
	ListRuns() ([]Run, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveRun saves the given run to persistence, replacing a run with the same id
func (p persistence) SaveRun(run Run) (err error) {
	if !run.Trace.Finite() {
		return ErrNonFiniteTrace
	}

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(run.ID), data)
	})
}

// LoadRun loads the run with the given id from persistence
func (p persistence) LoadRun(id string) (Run, error) {
	db, err := p.openPersistence()
	if err != nil {
		return Run{}, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var run Run
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(id))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &run)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved run %s: %v", id, err)
			err := b.Delete([]byte(id))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", id, err)
			}
			return os.ErrNotExist
		}

		return nil
	})

	return run, err
}

func (p persistence) DeleteRun(id string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			// no run bucket yet
			return os.ErrNotExist
		}
		v := b.Get([]byte(id))
		if v == nil {
			// no data for given key
			return os.ErrNotExist
		}

		return b.Delete([]byte(id))
	})
}

func (p persistence) ListRuns() ([]Run, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	runs := []Run{}
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				ui.Warning("Skipping unreadable run %s: %v", string(k), err)
				return nil
			}
			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}
