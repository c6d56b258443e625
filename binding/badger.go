package binding

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hhkbp2/mapbench"
)

const (
	PropertyBadgerDir        = "badger.dir"
	PropertyBadgerDirDefault = ""
)

var (
	errKeyPresent = errors.New("key present")
	errKeyAbsent  = errors.New("key absent")
)

// badgerLogger forwards badger logs to hclog.
type badgerLogger struct {
	logger hclog.Logger
}

func (self badgerLogger) Errorf(format string, args ...interface{}) {
	self.logger.Error(fmt.Sprintf(format, args...))
}

func (self badgerLogger) Warningf(format string, args ...interface{}) {
	self.logger.Warn(fmt.Sprintf(format, args...))
}

func (self badgerLogger) Infof(format string, args ...interface{}) {
	self.logger.Debug(fmt.Sprintf(format, args...))
}

func (self badgerLogger) Debugf(format string, args ...interface{}) {
	self.logger.Trace(fmt.Sprintf(format, args...))
}

// BadgerMap stores keys in a badger database, in memory unless a directory
// is given. Every operation runs in its own transaction and conflicting
// transactions are retried.
type BadgerMap struct {
	db     *badger.DB
	logger hclog.Logger
}

func NewBadgerMap(dir string, logger hclog.Logger) (*BadgerMap, error) {
	opts := badger.DefaultOptions(dir).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{logger})
	if len(dir) == 0 {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerMap{
		db:     db,
		logger: logger,
	}, nil
}

func (self *BadgerMap) Pin() mapbench.Handle {
	return &badgerHandle{db: self.db}
}

func (self *BadgerMap) Close() error {
	return self.db.Close()
}

// Reclaim flushes the memtables and compacts the levels so that removed
// keys stop holding memory before the next case.
func (self *BadgerMap) Reclaim() {
	if err := self.db.Flatten(1); err != nil {
		self.logger.Warn("badger flatten failed", "error", err)
	}
}

type badgerHandle struct {
	db  *badger.DB
	key [8]byte
}

func (self *badgerHandle) encode(key uint64) []byte {
	binary.BigEndian.PutUint64(self.key[:], key)
	return self.key[:]
}

// update runs fn in a read-write transaction until it commits without a
// conflict. It reports false when fn gives up with expected.
func (self *badgerHandle) update(fn func(txn *badger.Txn) error, expected error) bool {
	for {
		err := self.db.Update(fn)
		switch {
		case err == nil:
			return true
		case errors.Is(err, badger.ErrConflict):
			continue
		case errors.Is(err, expected):
			return false
		default:
			panic(fmt.Sprintf("badger update: %s", err))
		}
	}
}

func (self *badgerHandle) Get(key uint64) bool {
	k := self.encode(key)
	err := self.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(k)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		panic(fmt.Sprintf("badger get: %s", err))
	}
	return true
}

func (self *badgerHandle) Insert(key uint64) bool {
	k := self.encode(key)
	return self.update(func(txn *badger.Txn) error {
		_, err := txn.Get(k)
		if err == nil {
			return errKeyPresent
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(append([]byte(nil), k...), make([]byte, 4))
	}, errKeyPresent)
}

func (self *badgerHandle) Remove(key uint64) bool {
	k := self.encode(key)
	return self.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(k); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errKeyAbsent
			}
			return err
		}
		return txn.Delete(append([]byte(nil), k...))
	}, errKeyAbsent)
}

func (self *badgerHandle) Update(key uint64) bool {
	k := self.encode(key)
	return self.update(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errKeyAbsent
			}
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		next := make([]byte, 4)
		if len(value) == 4 {
			binary.BigEndian.PutUint32(next, binary.BigEndian.Uint32(value)+1)
		}
		return txn.Set(append([]byte(nil), k...), next)
	}, errKeyAbsent)
}
