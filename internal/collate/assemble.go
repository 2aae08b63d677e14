package collate

// assembleExample builds one example's training sequence, label sequence and
// generation prompt under the token budget.
//
// The current message is the non-negotiable floor: it is truncated to the
// budget first and never dropped in favour of history. History turns are then
// merged most recent first; the first turn that does not fit stops the scan,
// so truncation is always contiguous from the oldest boundary. This is a
// deliberate trade-off over best-fit packing and must stay that way: packing
// a different subset of turns changes what the model trains on.
func assembleExample(ex Example, cfg CollatorConfig) assembled {
	budget := cfg.msgBudget()
	if budget < 0 {
		budget = 0
	}

	msg := ex.MsgIDs
	if len(msg) > budget {
		msg = msg[:budget]
	}

	curLen := len(msg)
	if cfg.WrapSpecials {
		curLen += 2
	}

	// Walk history newest to oldest and find the oldest turn that still
	// fits. Only the cut point is recorded here; the sequences are laid
	// out in a single preallocated pass below.
	first := len(ex.HistoryIDs)
	merged := 0
	if cfg.IncludeHistory {
		for i := len(ex.HistoryIDs) - 1; i >= 0; i-- {
			extra := len(ex.HistoryIDs[i]) + len(cfg.Separator)
			if curLen+extra > cfg.MaxLen {
				break
			}
			curLen += extra
			merged += extra
			first = i
		}
	}

	total := merged + len(msg)
	if cfg.WrapSpecials {
		total += 2
	}

	ids := make([]int, 0, total)
	labels := make([]int, 0, total)

	if cfg.WrapSpecials {
		ids = append(ids, cfg.BOSTokenID)
		labels = append(labels, cfg.IgnoreLabelID)
	}
	for _, turn := range ex.HistoryIDs[first:] {
		ids = append(ids, turn...)
		ids = append(ids, cfg.Separator...)
		for range len(turn) + len(cfg.Separator) {
			labels = append(labels, cfg.IgnoreLabelID)
		}
	}
	ids = append(ids, msg...)
	labels = append(labels, msg...)
	if cfg.WrapSpecials {
		ids = append(ids, cfg.EOSTokenID)
		labels = append(labels, cfg.IgnoreLabelID)
	}

	out := assembled{trainingIDs: ids, trainingLabels: labels}

	if cfg.EmitGenerationPrompt {
		prompt := make([]int, 0, 1+merged)
		prompt = append(prompt, cfg.BOSTokenID)
		for _, turn := range ex.HistoryIDs[first:] {
			prompt = append(prompt, turn...)
			prompt = append(prompt, cfg.Separator...)
		}
		out.generationPromptIDs = prompt
	}

	return out
}
