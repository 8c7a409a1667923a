package testsupport

// ScheduleXML is a trimmed Finnkino schedule document with two shows in
// reverse start order and one show missing its title.
const ScheduleXML = `<?xml version="1.0"?>
<Schedule xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <PubDate>2026-10-16T09:00:00+03:00</PubDate>
  <Shows>
    <Show>
      <ID>900002</ID>
      <dttmShowStart>2026-10-16T21:00:00</dttmShowStart>
      <EventID>303030</EventID>
      <Title>Dune: Part Two</Title>
      <OriginalTitle>Dune: Part Two</OriginalTitle>
      <ProductionYear>2024</ProductionYear>
      <LengthInMinutes>166</LengthInMinutes>
      <Rating>12</Rating>
      <TheatreID>1038</TheatreID>
      <TheatreAuditriumID>1</TheatreAuditriumID>
      <Theatre>Tennispalatsi, Helsinki</Theatre>
      <TheatreAuditorium>sali 1</TheatreAuditorium>
      <PresentationMethodAndLanguage>2D, englanti</PresentationMethodAndLanguage>
      <Images>
        <EventLargeImagePortrait>https://media.finnkino.fi/dune.jpg</EventLargeImagePortrait>
        <EventLargeImageLandscape>https://media.finnkino.fi/dune-wide.jpg</EventLargeImageLandscape>
      </Images>
    </Show>
    <Show>
      <ID>900001</ID>
      <dttmShowStart>2026-10-16T18:30:00</dttmShowStart>
      <EventID>303031</EventID>
      <Title>Tove</Title>
      <OriginalTitle>Tove</OriginalTitle>
      <ProductionYear>2020</ProductionYear>
      <LengthInMinutes>103</LengthInMinutes>
      <Theatre>Maxim, Helsinki</Theatre>
    </Show>
    <Show>
      <ID>900003</ID>
      <dttmShowStart>2026-10-16T20:00:00</dttmShowStart>
      <EventID>303032</EventID>
    </Show>
  </Shows>
</Schedule>`

// TheatreAreasXML is a trimmed Finnkino theatre area listing.
const TheatreAreasXML = `<?xml version="1.0"?>
<TheatreAreas>
  <TheatreArea>
    <ID>1029</ID>
    <Name>Valitse alue/teatteri</Name>
  </TheatreArea>
  <TheatreArea>
    <ID>1014</ID>
    <Name>Pääkaupunkiseutu</Name>
  </TheatreArea>
  <TheatreArea>
    <ID>1038</ID>
    <Name>Helsinki: TENNISPALATSI</Name>
  </TheatreArea>
</TheatreAreas>`

// ScheduleJSON is a wrapped JSON schedule with camelCase keys.
const ScheduleJSON = `{
  "data": {
    "schedule": {
      "showtimes": [
        {"showId": 11, "eventId": 501, "title": "Aki", "showtime": "2026-10-17T12:00:00Z", "theatre": "Kino Engel", "productionYear": 2023},
        {"showId": 10, "eventId": 500, "title": "Kaurismäki", "showtime": "2026-10-17T10:00:00Z", "location": "Kino Engel"}
      ]
    }
  }
}`
