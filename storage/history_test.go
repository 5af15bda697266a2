// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	history, err := OpenHistory(t.TempDir())
	assert.NoError(t, err)
	t.Cleanup(func() { history.Close() })
	return history
}

func TestHistoryPutList(t *testing.T) {
	asrt := assert.New(t)
	history := openTestHistory(t)

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		err := history.Put(&DeployRecord{
			DeployHash:  fmt.Sprintf("deploy-%d", i),
			EntryPoint:  "init",
			PackageHash: "deadbeef",
			ChainName:   "casper-test",
			SubmittedAt: base.Add(time.Duration(i) * time.Second),
		})
		asrt.NoError(err)
	}

	recs, err := history.List(0)
	asrt.NoError(err)
	asrt.Len(recs, 3)
	// newest first
	asrt.Equal("deploy-2", recs[0].DeployHash)
	asrt.Equal("deploy-0", recs[2].DeployHash)

	recs, err = history.List(2)
	asrt.NoError(err)
	asrt.Len(recs, 2)
	asrt.Equal("deploy-2", recs[0].DeployHash)

	count, err := history.Count()
	asrt.NoError(err)
	asrt.EqualValues(3, count)
}

func TestHistoryEmpty(t *testing.T) {
	asrt := assert.New(t)
	history := openTestHistory(t)

	recs, err := history.List(10)
	asrt.NoError(err)
	asrt.Empty(recs)

	count, err := history.Count()
	asrt.NoError(err)
	asrt.EqualValues(0, count)
}

func TestHistoryFillsSubmittedAt(t *testing.T) {
	asrt := assert.New(t)
	history := openTestHistory(t)

	rec := &DeployRecord{DeployHash: "deploy-x"}
	asrt.NoError(history.Put(rec))
	asrt.False(rec.SubmittedAt.IsZero())

	recs, err := history.List(1)
	asrt.NoError(err)
	asrt.Len(recs, 1)
	asrt.Equal("deploy-x", recs[0].DeployHash)
}
