package arena

import (
	"testing"

	"github.com/nullmove/negavote/internal/chess"
)

func TestRegisterAndResetThread(t *testing.T) {
	var a = New()
	a.RegisterThread(0)

	var k = a.Killers(0, 5)
	k.Add(chess.NoMove + 1)
	if !k.Contains(chess.NoMove + 1) {
		t.Fatalf("expected killer to be recorded before reset")
	}

	a.ResetThread(0)
	if a.Killers(0, 5).Contains(chess.NoMove + 1) {
		t.Errorf("expected killer slot cleared after reset")
	}
}

func TestMoveBufferReused(t *testing.T) {
	var a = New()
	a.RegisterThread(1)

	var buf1 = a.MoveBuffer(1, 3)
	if len(buf1) != chess.MaxMoves {
		t.Fatalf("expected buffer length %d, got %d", chess.MaxMoves, len(buf1))
	}
	buf1[0] = chess.NoMove + 1

	var buf2 = a.MoveBuffer(1, 3)
	if buf2[0] != buf1[0] {
		t.Error("expected same backing array on repeated call for same ply")
	}
}

func TestKillerRingFIFOAndDedup(t *testing.T) {
	var k KillerRing
	var m1, m2, m3, m4 = chess.Move(1), chess.Move(2), chess.Move(3), chess.Move(4)
	k.Add(m1)
	k.Add(m1)
	if !k.Contains(m1) {
		t.Fatalf("expected m1 recorded")
	}

	k.Add(m2)
	k.Add(m3)
	if !k.Contains(m2) || !k.Contains(m3) {
		t.Fatalf("expected m2 and m3 recorded")
	}

	k.Add(m4)
	if k.Contains(m1) {
		t.Error("expected oldest killer evicted")
	}
	if !k.Contains(m4) {
		t.Error("expected newest killer recorded")
	}
}

func TestResetAllThreads(t *testing.T) {
	var a = New()
	a.RegisterThread(0)
	a.RegisterThread(1)
	a.Killers(0, 0).Add(chess.NoMove + 1)
	a.Killers(1, 0).Add(chess.NoMove + 1)

	a.ResetAllThreads()

	if a.Killers(0, 0).Contains(chess.NoMove+1) || a.Killers(1, 0).Contains(chess.NoMove+1) {
		t.Error("expected all threads cleared")
	}
}
