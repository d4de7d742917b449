// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daybreak-app/daybreak-store/internal/crypto"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/models"
)

type contactRepository struct {
	*DB
	codec  crypto.FieldCodec
	logger *logger.Logger
}

func NewContactRepository(db *DB, codec crypto.FieldCodec, logger *logger.Logger) ContactStorage {
	return &contactRepository{
		DB:     db,
		codec:  codec,
		logger: logger,
	}
}

func (c *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	log := logger.FromContext(ctx)

	name, phone, notes, err := c.encryptFields(contact)
	if err != nil {
		return err
	}

	_, err = c.DB.ExecContext(ctx, createContact,
		contact.ID,
		name,
		phone,
		notes,
		string(contact.Role),
		contact.IsSponsor,
		encodeTime(contact.CreatedAt),
		encodeTime(contact.UpdatedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.Create").
			Str("id", contact.ID).
			Msg("failed to execute insert for contact")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (c *contactRepository) Get(ctx context.Context, id string) (models.Contact, error) {
	log := logger.FromContext(ctx)

	row := c.DB.QueryRowContext(ctx, getContact, id)
	contact, err := c.scanContact(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, ErrNotFound
		}
		log.Err(err).
			Str("func", "contactRepository.Get").
			Str("id", id).
			Msg("failed to scan contact row")
		return models.Contact{}, err
	}

	return contact, nil
}

func (c *contactRepository) List(ctx context.Context) ([]models.Contact, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, listContacts)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.List").
			Msg("failed to execute query for contacts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		contact, scanErr := c.scanContact(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "contactRepository.List").
				Msg("failed to scan contact row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		contacts = append(contacts, contact)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return contacts, nil
}

func (c *contactRepository) Update(ctx context.Context, contact *models.Contact) error {
	log := logger.FromContext(ctx)

	name, phone, notes, err := c.encryptFields(contact)
	if err != nil {
		return err
	}

	result, err := c.DB.ExecContext(ctx, updateContact,
		name,
		phone,
		notes,
		string(contact.Role),
		encodeTime(contact.UpdatedAt),
		contact.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.Update").
			Str("id", contact.ID).
			Msg("failed to execute update for contact")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *contactRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, deleteContact, id)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.Delete").
			Str("id", id).
			Msg("failed to execute delete for contact")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (c *contactRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := c.DB.QueryRowContext(ctx, countContacts).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// SetSponsor moves the sponsor role to the given contact. The clear and the
// set run in one transaction so no observer ever sees two sponsors.
func (c *contactRepository) SetSponsor(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "contactRepository.SetSponsor").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, clearSponsorFlag); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	result, err := tx.ExecContext(ctx, setSponsorFlag, string(models.RoleSponsor), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		// Rollback keeps the previous sponsor in place.
		return ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "contactRepository.SetSponsor").
			Str("id", id).
			Msg("failed to commit sponsor transfer")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (c *contactRepository) ClearSponsor(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, clearSponsorFlag); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (c *contactRepository) HasSponsor(ctx context.Context) (bool, error) {
	var count int
	if err := c.DB.QueryRowContext(ctx, hasSponsorFlag).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count > 0, nil
}

func (c *contactRepository) encryptFields(contact *models.Contact) (name, phone, notes string, err error) {
	if name, err = c.codec.Encrypt(contact.Name); err != nil {
		return "", "", "", fmt.Errorf("failed to encrypt contact name: %w", err)
	}
	if phone, err = c.codec.Encrypt(contact.Phone); err != nil {
		return "", "", "", fmt.Errorf("failed to encrypt contact phone: %w", err)
	}
	if notes, err = c.codec.Encrypt(contact.Notes); err != nil {
		return "", "", "", fmt.Errorf("failed to encrypt contact notes: %w", err)
	}
	return name, phone, notes, nil
}

func (c *contactRepository) scanContact(scan func(dest ...any) error) (models.Contact, error) {
	var (
		contact            models.Contact
		name, phone, notes string
		role               string
		createdAt, updated string
	)
	if err := scan(&contact.ID, &name, &phone, &notes, &role, &contact.IsSponsor, &createdAt, &updated); err != nil {
		return models.Contact{}, err
	}

	contact.Name = c.codec.DecryptOrPlaceholder(name)
	contact.Phone = c.codec.DecryptOrPlaceholder(phone)
	contact.Notes = c.codec.DecryptOrPlaceholder(notes)
	contact.Role = models.ContactRole(role)

	var err error
	if contact.CreatedAt, err = decodeTime(createdAt); err != nil {
		return models.Contact{}, err
	}
	if contact.UpdatedAt, err = decodeTime(updated); err != nil {
		return models.Contact{}, err
	}

	return contact, nil
}
