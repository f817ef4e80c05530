// Package history stores evaluated builds per job so that later builds can
// pick the coverage of an earlier one as their reference.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/qualitygate"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// ErrNoReference is returned when no earlier build of a job has a recorded
// coverage tree.
var ErrNoReference = errors.New("no reference build found")

const jobsBucket = "jobs"

// Record is what is kept of one build.
type Record struct {
	Build    int                        `json:"build"`
	Recorded time.Time                  `json:"recorded"`
	Tree     *tree.Tree                 `json:"tree,omitempty"`
	Delta    map[metric.Metric]*big.Rat `json:"delta,omitempty"`
	Result   *qualitygate.Result        `json:"result,omitempty"`
}

// Store is a bbolt database with one nested bucket per job. Builds are keyed
// by their big-endian number so cursors walk them in build order.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(jobsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func buildKey(build int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(build))
	return key
}

// Save stores record under job, replacing an earlier record of the same
// build.
func (s *Store) Save(job string, record *Record) error {
	if record.Build < 0 {
		return fmt.Errorf("invalid build number %d", record.Build)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding build %d of %s: %w", record.Build, job, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		jobs, err := tx.Bucket([]byte(jobsBucket)).CreateBucketIfNotExists([]byte(job))
		if err != nil {
			return err
		}
		return jobs.Put(buildKey(record.Build), data)
	})
}

// Reference returns the newest build of job before beforeBuild that has a
// coverage tree. Builds without a tree are skipped.
func (s *Store) Reference(job string, beforeBuild int) (*Record, error) {
	var found *Record
	err := s.db.View(func(tx *bolt.Tx) error {
		jobs := tx.Bucket([]byte(jobsBucket)).Bucket([]byte(job))
		if jobs == nil {
			return nil
		}
		c := jobs.Cursor()
		k, v := c.Seek(buildKey(beforeBuild))
		if k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("decoding build %d of %s: %w", binary.BigEndian.Uint64(k), job, err)
			}
			if r.Tree != nil {
				found = &r
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w for job %q before build %d", ErrNoReference, job, beforeBuild)
	}
	return found, nil
}

// Builds lists the recorded build numbers of job in ascending order.
func (s *Store) Builds(job string) ([]int, error) {
	var builds []int
	err := s.db.View(func(tx *bolt.Tx) error {
		jobs := tx.Bucket([]byte(jobsBucket)).Bucket([]byte(job))
		if jobs == nil {
			return nil
		}
		return jobs.ForEach(func(k, _ []byte) error {
			builds = append(builds, int(binary.BigEndian.Uint64(k)))
			return nil
		})
	})
	return builds, err
}
