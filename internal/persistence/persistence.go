package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/markusressel/hpfan/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSelection      = "selection"
	BucketChannelSamples = "channelSamples"

	keyCurrentSelection = "current"
)

// Selection holds strategy selector tokens chosen at runtime.
// Empty tokens are not overridden.
type Selection struct {
	ReadType string `json:"readType,omitempty"`
	CtrlType string `json:"ctrlType,omitempty"`
}

type Persistence interface {
	Init() error

	LoadSelection() (Selection, error)
	SaveSelection(selection Selection) (err error)
	DeleteSelection() (err error)

	LoadChannelSamples(channel int) ([]float64, error)
	SaveChannelSamples(channel int, samples []float64) (err error)
	DeleteChannelSamples(channel int) (err error)
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

// LoadSelection loads the persisted strategy selection, os.ErrNotExist if there is none
func (p persistence) LoadSelection() (Selection, error) {
	selection := Selection{}
	err := p.load(BucketSelection, keyCurrentSelection, &selection)
	return selection, err
}

// SaveSelection persists the given strategy selection, replacing any previous one
func (p persistence) SaveSelection(selection Selection) (err error) {
	return p.save(BucketSelection, keyCurrentSelection, selection)
}

func (p persistence) DeleteSelection() (err error) {
	return p.delete(BucketSelection, keyCurrentSelection)
}

// LoadChannelSamples loads the last known speed samples of the given channel
func (p persistence) LoadChannelSamples(channel int) ([]float64, error) {
	var samples []float64
	err := p.load(BucketChannelSamples, strconv.Itoa(channel), &samples)
	return samples, err
}

// SaveChannelSamples persists the speed samples of the given channel, oldest first
func (p persistence) SaveChannelSamples(channel int, samples []float64) (err error) {
	return p.save(BucketChannelSamples, strconv.Itoa(channel), samples)
}

func (p persistence) DeleteChannelSamples(channel int) (err error) {
	return p.delete(BucketChannelSamples, strconv.Itoa(channel))
}

func (p persistence) save(bucket string, key string, value interface{}) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(key), data)
	})
}

func (p persistence) load(bucket string, key string, target interface{}) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	corrupt := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(key))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, target)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved %s data for %s: %v", bucket, key, err)
			corrupt = true
			err := b.Delete([]byte(key))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", key, err)
			}
		}

		return nil
	})
	if err == nil && corrupt {
		return os.ErrNotExist
	}
	return err
}

func (p persistence) delete(bucket string, key string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			// nothing persisted yet
			return nil
		}
		if b.Get([]byte(key)) == nil {
			// no data for given key
			return nil
		}
		return b.Delete([]byte(key))
	})
}
