package orcidfake

import (
	"context"
	"strconv"
	"sync"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
)

// FakeSubmitter hands out increasing put-codes starting at NextPutCode.
type FakeSubmitter struct {
	mu sync.Mutex

	NextPutCode int
	Err         error
	Calls       []credits.Credit
	Tokens      []string
}

func NewFakeSubmitter(firstPutCode int) *FakeSubmitter {
	return &FakeSubmitter{NextPutCode: firstPutCode}
}

func (s *FakeSubmitter) Submit(_ context.Context, cred identity.Credential, credit credits.Credit) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, credit)
	s.Tokens = append(s.Tokens, cred.AccessToken)
	if s.Err != nil {
		return "", s.Err
	}
	putCode := strconv.Itoa(s.NextPutCode)
	s.NextPutCode++
	return putCode, nil
}

func (s *FakeSubmitter) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
