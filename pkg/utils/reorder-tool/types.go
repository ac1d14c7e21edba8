// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package reordertool

// Options for reorder tool.
type Options struct {
	/*
		SkipEmpty related with empty input (default: FALSE),

		SkipEmpty: FALSE yields one empty ordering for an empty input,
		so a caller still runs its attempt once (e.g. to report what is missing).

		SkipEmpty: TRUE make HasNext() directly return false even in first loop.
	*/
	SkipEmpty bool

	/*
		MaxLoop limit the maximum number of orderings returned,
		0 means every rotation.

		Only counts are used as limits, never elapsed time,
		so two runs over the same input always see the same orderings.
	*/
	MaxLoop int
}
