package postgres

import "hotel_merge/internal/storage"

const createHotelsSQL = `
CREATE TABLE IF NOT EXISTS hotels (
  hotel_id           TEXT    PRIMARY KEY,
  seq                INTEGER NOT NULL,
  destination_id     TEXT    NOT NULL,
  name               TEXT    NOT NULL,
  location           JSONB   NOT NULL,
  description        TEXT    NOT NULL,
  images             JSONB   NOT NULL,
  amenities          JSONB,
  booking_conditions JSONB
);
CREATE INDEX IF NOT EXISTS idx_hotels_seq ON hotels (seq);
CREATE INDEX IF NOT EXISTS idx_hotels_destination ON hotels (destination_id, seq);
`

const deleteHotelsSQL = `DELETE FROM hotels`

const getHotelSQL = `
SELECT ` + storage.SelectList + `
FROM hotels
WHERE hotel_id = $1
`

const listHotelsSQL = `
SELECT ` + storage.SelectList + `
FROM hotels
WHERE ($1::text IS NULL OR destination_id = $1)
  AND seq > $2
ORDER BY seq
LIMIT $3
`
