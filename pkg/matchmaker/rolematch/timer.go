// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rolematch

import "time"

type elapsedTimer struct {
	startTime time.Time
	last      time.Duration
	total     time.Duration
}

func (t *elapsedTimer) start() {
	t.startTime = time.Now()
}

func (t *elapsedTimer) end() {
	t.last = time.Since(t.startTime)
	t.total += t.last
}

func (t *elapsedTimer) elapsed() time.Duration {
	return t.last
}

func (t *elapsedTimer) totalElapsed() time.Duration {
	return t.total
}
