package save

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KirkDiggler/improbability/internal/economy"
	"github.com/stretchr/testify/suite"
)

type FileRepositoryTestSuite struct {
	suite.Suite
	dir  string
	repo Repository
}

func (s *FileRepositoryTestSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "saves")

	repo, err := NewFile(&FileConfig{Dir: s.dir})
	s.Require().NoError(err)
	s.repo = repo
}

func TestFileRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(FileRepositoryTestSuite))
}

func (s *FileRepositoryTestSuite) TestNewFile_Validation() {
	_, err := NewFile(nil)
	s.Error(err)

	_, err = NewFile(&FileConfig{})
	s.Error(err)
}

func (s *FileRepositoryTestSuite) TestSaveAndLoad() {
	ctx := context.Background()
	saved := &economy.Economy{
		PlayerName:   "Ada",
		Money:        240,
		Entropy:      0.5,
		MachineLevel: 10,
		GameLength:   2 * time.Minute,
	}

	s.Require().NoError(s.repo.SaveEconomy(ctx, &SaveEconomyInput{PlayerID: "Ada", Economy: saved}))

	data, err := os.ReadFile(filepath.Join(s.dir, "Ada.txt"))
	s.Require().NoError(err)
	s.Equal("Ada,240,0.5,10,120\n", string(data))

	loaded, err := s.repo.LoadEconomy(ctx, &LoadEconomyInput{PlayerID: "Ada"})
	s.Require().NoError(err)
	s.Equal(saved, loaded)

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *FileRepositoryTestSuite) TestLoad_NotFound() {
	_, err := s.repo.LoadEconomy(context.Background(), &LoadEconomyInput{PlayerID: "missing"})
	s.ErrorIs(err, ErrSaveNotFound)
}

func (s *FileRepositoryTestSuite) TestLoad_MalformedRecord() {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "Ada.txt"), []byte("Ada,240,100\n"), 0o644))

	_, err := s.repo.LoadEconomy(context.Background(), &LoadEconomyInput{PlayerID: "Ada"})
	s.ErrorIs(err, economy.ErrMalformedRecord)
}

func (s *FileRepositoryTestSuite) TestLoad_RejectsPathTraversal() {
	_, err := s.repo.LoadEconomy(context.Background(), &LoadEconomyInput{PlayerID: "../Ada"})
	s.Error(err)
	s.NotErrorIs(err, ErrSaveNotFound)
}

func (s *FileRepositoryTestSuite) TestDeleteSave() {
	ctx := context.Background()
	econ, err := economy.New("Ada")
	s.Require().NoError(err)
	s.Require().NoError(s.repo.SaveEconomy(ctx, &SaveEconomyInput{PlayerID: "Ada", Economy: econ}))

	s.Require().NoError(s.repo.DeleteSave(ctx, &DeleteSaveInput{PlayerID: "Ada"}))

	_, err = s.repo.LoadEconomy(ctx, &LoadEconomyInput{PlayerID: "Ada"})
	s.ErrorIs(err, ErrSaveNotFound)
	s.ErrorIs(s.repo.DeleteSave(ctx, &DeleteSaveInput{PlayerID: "Ada"}), ErrSaveNotFound)
}

func (s *FileRepositoryTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.repo.LoadEconomy(ctx, &LoadEconomyInput{PlayerID: "Ada"})
	s.ErrorIs(err, context.Canceled)
}
