package model

import "time"

type Decision struct {
	ID        uint   `gorm:"primaryKey"`
	Turn      int64  `gorm:"index"`
	Tick      int64  `gorm:"index"`
	Kind      string `gorm:"size:32"`
	Detail    string `gorm:"size:128"`
	Outcome   string `gorm:"size:256"`
	X         int
	Y         int
	CreatedAt time.Time
}

type Summary struct {
	ID        uint   `gorm:"primaryKey"`
	PeerID    string `gorm:"size:64;uniqueIndex:idx_peer_title"`
	Title     string `gorm:"size:256;uniqueIndex:idx_peer_title"`
	Body      string
	Topics    []byte `gorm:"type:blob"`
	CreatedAt time.Time
}
