package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	registrationsBucket = []byte("registrations")
	conversationsBucket = []byte("conversations")
)

type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(registrationsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(conversationsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) SaveRegistration(_ context.Context, r Registration) error {
	if r.UserID == "" {
		return fmt.Errorf("registration without user id")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return tx.Bucket(registrationsBucket).Put([]byte(r.UserID), data)
	})
}

func (s *BoltStore) ListRegistrations(_ context.Context) ([]Registration, error) {
	regs := []Registration{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(registrationsBucket).ForEach(func(_, v []byte) error {
			var r Registration
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			regs = append(regs, r)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	return regs, nil
}

func (s *BoltStore) AppendTurn(_ context.Context, conversationID string, t TurnRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(conversationsBucket)

		var turns []TurnRecord
		if v := b.Get([]byte(conversationID)); v != nil {
			if err := json.Unmarshal(v, &turns); err != nil {
				return fmt.Errorf("decoding turns: %w", err)
			}
		}

		data, err := json.Marshal(trimTurns(append(turns, t)))
		if err != nil {
			return err
		}
		return b.Put([]byte(conversationID), data)
	})
}

func (s *BoltStore) GetTurns(_ context.Context, conversationID string) ([]TurnRecord, error) {
	var turns []TurnRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(conversationsBucket).Get([]byte(conversationID))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &turns); err != nil {
			return fmt.Errorf("decoding turns: %w", err)
		}
		return nil
	})
	return turns, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
