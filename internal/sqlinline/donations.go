package sqlinline

const donationColumns = `id::text, amount, currency_code, donation_date, campaign, cause, city, donor_id::text, donor_name, donor_email, donor_phone, summary, created_at, updated_at`

const QInsertDonation = `--sql 8d2d9846-2761-4443-9945-82d41148ee29
insert into donations(id, amount, currency_code, donation_date, campaign, cause, city, donor_id, donor_name, donor_email, donor_phone, summary, created_at, updated_at)
values (gen_random_uuid(), $1::numeric, $2::text, coalesce($3::date, current_date), $4::text, $5::text, $6::text, nullif($7::text, '')::uuid, $8::text, $9::text, $10::text, '', now(), now())
returning id::text, donation_date, created_at, updated_at;
`

const QUpdateDonation = `--sql c785402e-5032-43eb-a2f3-97cde54d96e3
update donations
set amount = $2::numeric,
    currency_code = $3::text,
    donation_date = coalesce($4::date, donation_date),
    campaign = $5::text,
    cause = $6::text,
    city = $7::text,
    donor_id = nullif($8::text, '')::uuid,
    donor_name = $9::text,
    donor_email = $10::text,
    donor_phone = $11::text,
    updated_at = now()
where id = $1::uuid
returning donation_date, updated_at;
`

const QGetDonation = `--sql 91664431-cabe-452e-8f0f-c1f89c3cc04c
select ` + donationColumns + `
from donations
where id = $1::uuid;
`

// QListDonationsInRange filters on donation_date with both bounds inclusive.
const QListDonationsInRange = `--sql adb7ff3f-b523-4caf-8c18-2295fa6e9a4d
select ` + donationColumns + `
from donations
where donation_date >= $1::date and donation_date <= $2::date
order by donation_date asc, created_at asc;
`

const QListPendingThankYou = `--sql a0e55566-fadc-46a8-a5f5-a539d1516658
select ` + donationColumns + `
from donations
where summary = '' and donor_id is not null
order by created_at asc
limit $1::int;
`

const QSetDonationSummary = `--sql 820afe33-a4c0-4163-9ba0-c8b7912bc743
update donations
set summary = $2::text, updated_at = now()
where id = $1::uuid;
`
