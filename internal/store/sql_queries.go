// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package store

const (
	createJournalEntry = `
		INSERT INTO journal_entries (
			id,
			title,
			body,
			mood,
			tags,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	getJournalEntry = `
		SELECT
			id,
			title,
			body,
			mood,
			tags,
			created_at,
			updated_at
		FROM journal_entries
		WHERE id = ?;`

	updateJournalEntry = `
		UPDATE journal_entries SET
			title      = ?,
			body       = ?,
			mood       = ?,
			tags       = ?,
			updated_at = ?
		WHERE id = ?;`

	deleteJournalEntry = `
		DELETE FROM journal_entries
		WHERE id = ?;`

	countJournalEntries = `SELECT COUNT(*) FROM journal_entries;`

	upsertCheckIn = `
		INSERT INTO check_ins (
			id,
			day,
			feeling,
			craving,
			note,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (day) DO UPDATE SET
			feeling    = excluded.feeling,
			craving    = excluded.craving,
			note       = excluded.note,
			updated_at = excluded.updated_at;`

	getCheckInByDay = `
		SELECT
			id,
			day,
			feeling,
			craving,
			note,
			created_at,
			updated_at
		FROM check_ins
		WHERE day = ?;`

	listCheckIns = `
		SELECT
			id,
			day,
			feeling,
			craving,
			note,
			created_at,
			updated_at
		FROM check_ins
		ORDER BY day DESC
		LIMIT ?;`

	listCheckInDays = `
		SELECT day FROM check_ins
		ORDER BY day DESC;`

	countCheckIns = `SELECT COUNT(*) FROM check_ins;`

	upsertDailyMark = `
		INSERT INTO daily_marks (stream, day, done, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (stream, day) DO UPDATE SET
			done = excluded.done;`

	listDailyMarksByStream = `
		SELECT stream, day, done
		FROM daily_marks
		WHERE stream = ?
		ORDER BY day DESC;`

	listAllDailyMarks = `
		SELECT stream, day, done
		FROM daily_marks
		ORDER BY stream, day DESC;`

	createContact = `
		INSERT INTO contacts (
			id,
			name,
			phone,
			notes,
			role,
			is_sponsor,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	getContact = `
		SELECT
			id,
			name,
			phone,
			notes,
			role,
			is_sponsor,
			created_at,
			updated_at
		FROM contacts
		WHERE id = ?;`

	listContacts = `
		SELECT
			id,
			name,
			phone,
			notes,
			role,
			is_sponsor,
			created_at,
			updated_at
		FROM contacts
		ORDER BY created_at;`

	updateContact = `
		UPDATE contacts SET
			name       = ?,
			phone      = ?,
			notes      = ?,
			role       = ?,
			updated_at = ?
		WHERE id = ?;`

	deleteContact = `
		DELETE FROM contacts
		WHERE id = ?;`

	countContacts = `SELECT COUNT(*) FROM contacts;`

	clearSponsorFlag = `
		UPDATE contacts SET is_sponsor = 0
		WHERE is_sponsor = 1;`

	setSponsorFlag = `
		UPDATE contacts SET is_sponsor = 1, role = ?
		WHERE id = ?;`

	hasSponsorFlag = `
		SELECT COUNT(*) FROM contacts
		WHERE is_sponsor = 1;`

	createMeeting = `
		INSERT INTO meetings (
			id,
			name,
			weekday,
			start_time,
			location,
			is_home_group,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	getMeeting = `
		SELECT
			id,
			name,
			weekday,
			start_time,
			location,
			is_home_group,
			created_at,
			updated_at
		FROM meetings
		WHERE id = ?;`

	listMeetings = `
		SELECT
			id,
			name,
			weekday,
			start_time,
			location,
			is_home_group,
			created_at,
			updated_at
		FROM meetings
		ORDER BY weekday, start_time;`

	updateMeeting = `
		UPDATE meetings SET
			name       = ?,
			weekday    = ?,
			start_time = ?,
			location   = ?,
			updated_at = ?
		WHERE id = ?;`

	deleteMeeting = `
		DELETE FROM meetings
		WHERE id = ?;`

	clearHomeGroupFlag = `
		UPDATE meetings SET is_home_group = 0
		WHERE is_home_group = 1;`

	setHomeGroupFlag = `
		UPDATE meetings SET is_home_group = 1
		WHERE id = ?;`

	hasHomeGroupFlag = `
		SELECT COUNT(*) FROM meetings
		WHERE is_home_group = 1;`

	createMeetingLog = `
		INSERT INTO meeting_logs (
			id,
			meeting_id,
			attended_at,
			note,
			created_at
		) VALUES (?, ?, ?, ?, ?);`

	listMeetingLogs = `
		SELECT
			id,
			meeting_id,
			attended_at,
			note,
			created_at
		FROM meeting_logs
		ORDER BY attended_at DESC
		LIMIT ?;`

	countMeetingLogs = `SELECT COUNT(*) FROM meeting_logs;`

	upsertStepAnswer = `
		INSERT INTO step_answers (
			id,
			step,
			question_id,
			answer,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (question_id) DO UPDATE SET
			answer     = excluded.answer,
			updated_at = excluded.updated_at;`

	getStepAnswer = `
		SELECT
			id,
			step,
			question_id,
			answer,
			created_at,
			updated_at
		FROM step_answers
		WHERE question_id = ?;`

	listStepAnswersForStep = `
		SELECT
			id,
			step,
			question_id,
			answer,
			created_at,
			updated_at
		FROM step_answers
		WHERE step = ?
		ORDER BY question_id;`

	listAllStepAnswers = `
		SELECT
			id,
			step,
			question_id,
			answer,
			created_at,
			updated_at
		FROM step_answers
		ORDER BY step, question_id;`

	countAnswersByStep = `
		SELECT step, COUNT(*)
		FROM step_answers
		GROUP BY step;`

	insertLockedAchievementState = `
		INSERT INTO achievement_states (id, status, current, unlocked_at, reflection)
		VALUES (?, 'locked', 0, NULL, '')
		ON CONFLICT (id) DO NOTHING;`

	listAchievementStates = `
		SELECT id, status, current, unlocked_at, reflection
		FROM achievement_states
		ORDER BY id;`

	saveAchievementState = `
		UPDATE achievement_states SET
			status      = ?,
			current     = ?,
			unlocked_at = ?,
			reflection  = ?
		WHERE id = ?;`

	getProfile = `
		SELECT display_name, clean_date, created_at, updated_at
		FROM profile
		WHERE id = 1;`

	saveProfile = `
		INSERT INTO profile (id, display_name, clean_date, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			display_name = excluded.display_name,
			clean_date   = excluded.clean_date,
			updated_at   = excluded.updated_at;`
)
