package klog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	L().Info("hello", zap.Int("width", 640))
	if got := logs.Len(); got != 1 {
		t.Fatalf("expected 1 log entry; got %d", got)
	}

	entry := logs.All()[0]
	if entry.Message != "hello" || entry.ContextMap()["width"] != int64(640) {
		t.Fatalf("unexpected log entry: %+v", entry)
	}

	SetLogger(nil)
	L().Info("discarded")
	if got := logs.Len(); got != 1 {
		t.Fatalf("expected nop logger to discard entries; got %d entries", got)
	}
}

func TestTee(t *testing.T) {
	defer SetLogger(nil)

	first, firstLogs := observer.New(zapcore.InfoLevel)
	second, secondLogs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(first))
	Tee(second)

	L().Info("info")
	L().Warn("warn")

	if got := firstLogs.Len(); got != 2 {
		t.Errorf("expected first core to receive 2 entries; got %d", got)
	}

	if got := secondLogs.Len(); got != 1 {
		t.Errorf("expected second core to receive 1 entry; got %d", got)
	}
}

func TestWriter(t *testing.T) {
	defer SetLogger(nil)

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	w := Writer(zapcore.InfoLevel)
	w.Write([]byte("[hal] lfb: mapped"))
	if got := logs.Len(); got != 0 {
		t.Fatalf("expected partial line to be buffered; got %d entries", got)
	}

	w.Write([]byte(" framebuffer\n[hal] lfb: initialized\n"))

	exp := []string{"[hal] lfb: mapped framebuffer", "[hal] lfb: initialized"}
	got := logs.All()
	if len(got) != len(exp) {
		t.Fatalf("expected %d entries; got %d", len(exp), len(got))
	}

	for i, e := range exp {
		if got[i].Message != e {
			t.Errorf("[entry %d] expected message %q; got %q", i, e, got[i].Message)
		}
		if got[i].Level != zapcore.InfoLevel {
			t.Errorf("[entry %d] expected level info; got %v", i, got[i].Level)
		}
	}
}
