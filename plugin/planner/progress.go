package planner

// TopicProgress returns the completion ratio of a topic against the current
// category count. Topics created before a category was added still count that
// category toward the denominator as incomplete.
func TopicProgress(topic Topic, totalCategories int) float64 {
	if totalCategories == 0 {
		return 0
	}
	done := 0
	for _, checked := range topic.Checks {
		if checked {
			done++
		}
	}
	return float64(done) / float64(totalCategories)
}

// BulletinProgress returns the ratio of completed exercises.
func BulletinProgress(bulletin Bulletin) float64 {
	if bulletin.ExerciseCount == 0 {
		return 0
	}
	done := 0
	for _, completed := range bulletin.CompletedExercises {
		if completed {
			done++
		}
	}
	return float64(done) / float64(bulletin.ExerciseCount)
}

// CategoryProgress returns the fraction of topics that completed one category.
func CategoryProgress(topics []Topic, categoryUID string) float64 {
	if len(topics) == 0 {
		return 0
	}
	done := 0
	for _, t := range topics {
		if t.Checks[categoryUID] {
			done++
		}
	}
	return float64(done) / float64(len(topics))
}

// GlobalProgress returns completed cells over all topic/category cells.
func GlobalProgress(topics []Topic, categories []Category) float64 {
	totalCells := len(topics) * len(categories)
	if totalCells == 0 {
		return 0
	}
	done := 0
	for _, t := range topics {
		for _, checked := range t.Checks {
			if checked {
				done++
			}
		}
	}
	return float64(done) / float64(totalCells)
}

// GlobalProgressWithBulletins pools topic cells and bulletin exercises into a
// single completion ratio.
func GlobalProgressWithBulletins(topics []Topic, categories []Category, bulletins []Bulletin) float64 {
	done, total := globalTotals(topics, categories)
	for _, b := range bulletins {
		total += b.ExerciseCount
		for _, completed := range b.CompletedExercises {
			if completed {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// BulletinsOnlyProgress returns completed exercises over total exercises.
func BulletinsOnlyProgress(bulletins []Bulletin) float64 {
	done, total := 0, 0
	for _, b := range bulletins {
		total += b.ExerciseCount
		for _, completed := range b.CompletedExercises {
			if completed {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// FolderProgress returns the topic completion ratio restricted to one folder.
// An empty folderUID selects the unfiled bucket (topics with no folder).
func FolderProgress(topics []Topic, categories []Category, folderUID string) float64 {
	scoped := topicsInFolder(topics, folderUID)
	return GlobalProgress(scoped, categories)
}

// FolderProgressWithBulletins is FolderProgress with the folder's bulletin
// exercises pooled into the ratio.
func FolderProgressWithBulletins(topics []Topic, categories []Category, bulletins []Bulletin, folderUID string) float64 {
	scopedTopics := topicsInFolder(topics, folderUID)
	scopedBulletins := make([]Bulletin, 0, len(bulletins))
	for _, b := range bulletins {
		if b.FolderUID == folderUID {
			scopedBulletins = append(scopedBulletins, b)
		}
	}
	return GlobalProgressWithBulletins(scopedTopics, categories, scopedBulletins)
}

// FolderTotals returns the raw completed/total cell counts behind
// FolderProgress, for display.
func FolderTotals(topics []Topic, categories []Category, folderUID string) (done, total int) {
	return globalTotals(topicsInFolder(topics, folderUID), categories)
}

func globalTotals(topics []Topic, categories []Category) (done, total int) {
	total = len(topics) * len(categories)
	for _, t := range topics {
		for _, checked := range t.Checks {
			if checked {
				done++
			}
		}
	}
	return done, total
}

func topicsInFolder(topics []Topic, folderUID string) []Topic {
	scoped := make([]Topic, 0, len(topics))
	for _, t := range topics {
		if t.FolderUID == folderUID {
			scoped = append(scoped, t)
		}
	}
	return scoped
}
