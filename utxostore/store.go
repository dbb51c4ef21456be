// Package utxostore persists the spendable outputs that fund transaction
// assembly. It is local bookkeeping for outputs the caller already knows
// about; discovering outputs on the network is out of scope.
package utxostore

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/txbuild-go/txbuild"
)

var bucketUTXOs = []byte("utxos")

// txIDLen is the byte length of a transaction id.
const txIDLen = 32

// UTXO is a spendable prior output.
type UTXO struct {
	TxID     []byte `json:"txid"` // 32 bytes, display (big-endian) order
	Vout     uint32 `json:"vout"`
	Satoshis uint64 `json:"satoshis"`
	Script   []byte `json:"script"` // locking script bytes
}

// InputParams converts the UTXO into the raw input shape consumed by the
// transaction builder.
func (u *UTXO) InputParams() txbuild.InputParams {
	return txbuild.InputParams{
		TxID:     hex.EncodeToString(u.TxID),
		Vout:     u.Vout,
		Script:   hex.EncodeToString(u.Script),
		Satoshis: u.Satoshis,
	}
}

func (u *UTXO) validate() error {
	if u == nil {
		return fmt.Errorf("%w: utxo", ErrNilParam)
	}
	if len(u.TxID) != txIDLen {
		return fmt.Errorf("%w: txid must be %d bytes", ErrInvalidUTXO, txIDLen)
	}
	if len(u.Script) == 0 {
		return fmt.Errorf("%w: empty locking script", ErrInvalidUTXO)
	}
	return nil
}

// Store wraps a bbolt database of UTXO records keyed by outpoint.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the bbolt database at dbPath. The parent directory
// is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("utxostore: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("utxostore: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUTXOs)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("utxostore: create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// outpointKey encodes txid + 4-byte big-endian vout as the bucket key.
func outpointKey(txid []byte, vout uint32) []byte {
	k := make([]byte, txIDLen+4)
	copy(k, txid)
	binary.BigEndian.PutUint32(k[txIDLen:], vout)
	return k
}

// Put stores a UTXO, overwriting any record for the same outpoint.
func (s *Store) Put(u *UTXO) error {
	if err := u.validate(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(u); err != nil {
			return fmt.Errorf("utxostore: encode utxo: %w", err)
		}
		if err := tx.Bucket(bucketUTXOs).Put(outpointKey(u.TxID, u.Vout), buf.Bytes()); err != nil {
			return fmt.Errorf("utxostore: put utxo: %w", err)
		}
		return nil
	})
}

// Get retrieves the UTXO for an outpoint.
func (s *Store) Get(txid []byte, vout uint32) (*UTXO, error) {
	if len(txid) != txIDLen {
		return nil, fmt.Errorf("%w: txid must be %d bytes", ErrInvalidUTXO, txIDLen)
	}

	var u UTXO
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUTXOs).Get(outpointKey(txid, vout))
		if data == nil {
			return ErrNotFound
		}
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&u); err != nil {
			return fmt.Errorf("utxostore: decode utxo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes the UTXO for an outpoint, typically once it is spent.
func (s *Store) Delete(txid []byte, vout uint32) error {
	if len(txid) != txIDLen {
		return fmt.Errorf("%w: txid must be %d bytes", ErrInvalidUTXO, txIDLen)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUTXOs)
		key := outpointKey(txid, vout)
		if b.Get(key) == nil {
			return ErrNotFound
		}
		if err := b.Delete(key); err != nil {
			return fmt.Errorf("utxostore: delete utxo: %w", err)
		}
		return nil
	})
}

// List returns all stored UTXOs.
func (s *Store) List() ([]*UTXO, error) {
	var utxos []*UTXO
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUTXOs).ForEach(func(k, v []byte) error {
			var u UTXO
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&u); err != nil {
				return fmt.Errorf("utxostore: decode utxo in list: %w", err)
			}
			utxos = append(utxos, &u)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("utxostore: list utxos: %w", err)
	}
	return utxos, nil
}

// Balance returns the sum of all stored UTXO values.
func (s *Store) Balance() (uint64, error) {
	utxos, err := s.List()
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, u := range utxos {
		total += u.Satoshis
	}
	return total, nil
}

// Select returns UTXOs covering at least target satoshis, largest first,
// together with their total value. It fails with ErrInsufficientFunds when
// the store cannot cover the target.
func (s *Store) Select(target uint64) ([]*UTXO, uint64, error) {
	utxos, err := s.List()
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(utxos, func(i, j int) bool {
		return utxos[i].Satoshis > utxos[j].Satoshis
	})

	var (
		selected []*UTXO
		total    uint64
	)
	for _, u := range utxos {
		selected = append(selected, u)
		total += u.Satoshis
		if total >= target {
			return selected, total, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: need %d sat, have %d sat", ErrInsufficientFunds, target, total)
}
